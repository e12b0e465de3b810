package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// WalletAddressKey is the metadata key the auth interceptor sets after
// validating the caller's token.
const WalletAddressKey = "wallet-address"

// GetWalletAddressFromContext extracts the authenticated wallet address from
// the gRPC metadata.
func GetWalletAddressFromContext(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Errorf(codes.Unauthenticated, "metadata is not provided")
	}

	addresses := md.Get(WalletAddressKey)
	if len(addresses) == 0 || addresses[0] == "" {
		return "", status.Errorf(codes.Unauthenticated, "wallet address is not provided in metadata")
	}
	return addresses[0], nil
}
