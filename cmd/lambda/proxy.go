package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/jrsteele09/cms-oauth-proxy/respond"
	"github.com/rs/zerolog"
)

// proxy serves API Gateway proxy events through the HTTP handler.
type proxy struct {
	adapter *httpadapter.HandlerAdapter
}

func newProxy(h http.Handler) *proxy {
	return &proxy{adapter: httpadapter.New(h)}
}

func (p *proxy) invoke(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger := zerolog.Ctx(ctx).With().Str("aws_request_id", lc.AwsRequestID).Logger()
		ctx = logger.WithContext(ctx)
	}

	resp, err := p.adapter.ProxyWithContext(ctx, event)
	if err != nil {
		// The handlers always write a status, so a failure here means the event could not
		// become an *http.Request.
		zerolog.Ctx(ctx).Warn().Err(err).Str("method", event.HTTPMethod).Str("path", event.Path).Msg("invalid proxy event")
		return invalidRequest(), nil
	}
	return resp, nil
}

func invalidRequest() events.APIGatewayProxyResponse {
	resp := respond.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	return events.APIGatewayProxyResponse{
		StatusCode:        resp.Status,
		MultiValueHeaders: resp.Header,
		Body:              string(resp.Body),
	}
}
