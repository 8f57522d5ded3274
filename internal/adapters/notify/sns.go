package notify

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// SNSPublisher is the part of *sns.Client the notifier needs.
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier sends reminder messages to an SNS topic.
type SNSNotifier struct {
	client   SNSPublisher
	topicARN string
	logger   *logger.Logger
}

// NewSNSNotifier wraps an existing publisher.
func NewSNSNotifier(client SNSPublisher, topicARN string, log *logger.Logger) ports.Notifier {
	return &SNSNotifier{
		client:   client,
		topicARN: topicARN,
		logger:   log.WithComponent("sns"),
	}
}

// NewFromConfig loads the default AWS credential chain and builds a notifier.
func NewFromConfig(ctx context.Context, cfg config.NotifyConfig, log *logger.Logger) (ports.Notifier, error) {
	if cfg.TopicARN == "" {
		return nil, fmt.Errorf("notify: topic arn is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewSNSNotifier(sns.NewFromConfig(awsCfg), cfg.TopicARN, log), nil
}

func (n *SNSNotifier) Publish(ctx context.Context, subject, message string) error {
	input := &sns.PublishInput{
		Message:  &message,
		TopicArn: &n.topicARN,
	}
	if subject != "" {
		input.Subject = &subject
	}

	out, err := n.client.Publish(ctx, input)
	if err != nil {
		n.logger.Errorw("Failed to publish", "topic", n.topicARN, "error", err)
		return fmt.Errorf("publish to sns topic %s: %w", n.topicARN, err)
	}

	if out != nil && out.MessageId != nil {
		n.logger.Infow("Published reminder", "topic", n.topicARN, "message_id", *out.MessageId)
	}
	return nil
}
