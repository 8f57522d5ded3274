package server

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// HandleAPIGatewayProxy serves one API Gateway proxy event through the echo
// router, so the same routes run behind lambda.Start.
func (s *Server) HandleAPIGatewayProxy(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := s.lambda.ProxyWithContext(ctx, event)
	if err != nil {
		s.logger.Errorw("Failed to proxy API Gateway event", "error", err, "method", event.HTTPMethod, "path", event.Path)
	}
	return resp, err
}
