package metadata

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"bimbingan_service/internal/ctxdata"
)

// NewMetadataUnaryInterceptor copies x-trace-id from incoming metadata into the context,
// generating one when the caller did not send it.
func NewMetadataUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("x-trace-id"); len(values) > 0 {
				ctx = ctxdata.WithTraceID(ctx, values[0])
			}
		}
		if _, ok := ctxdata.GetTraceID(ctx); !ok {
			if id, err := uuid.NewV7(); err == nil {
				ctx = ctxdata.WithTraceID(ctx, id.String())
			}
		}

		return handler(ctx, req)
	}
}
