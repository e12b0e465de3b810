package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "fashionswap.v1.RentalService"

// RentalServiceServer is the server API for fashionswap.v1.RentalService.
type RentalServiceServer interface {
	GetQuote(context.Context, *QuoteRequest) (*QuoteResponse, error)
	ListItem(context.Context, *ListItemRequest) (*ListingResponse, error)
	GetListing(context.Context, *GetListingRequest) (*ListingResponse, error)
	SearchListings(context.Context, *SearchListingsRequest) (*SearchListingsResponse, error)
	RentItem(context.Context, *RentItemRequest) (*RentItemResponse, error)
	GetRental(context.Context, *GetRentalRequest) (*RentalResponse, error)
	ListMyRentals(context.Context, *ListRentalsRequest) (*ListRentalsResponse, error)
	ListMyLendings(context.Context, *ListRentalsRequest) (*ListRentalsResponse, error)
	ReturnItem(context.Context, *ReturnItemRequest) (*ReturnItemResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*ProfileResponse, error)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unaryMethod builds the method descriptor that protoc would otherwise
// generate: decode, then run the handler through the interceptor chain.
func unaryMethod[Req, Resp any](name string, call func(RentalServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	info := &grpc.UnaryServerInfo{FullMethod: fullMethod(name)}
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(srv.(RentalServiceServer), ctx, req.(*Req))
				if err != nil {
					return nil, err
				}
				return resp, nil
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			methodInfo := *info
			methodInfo.Server = srv
			return interceptor(ctx, in, &methodInfo, handler)
		},
	}
}

var RentalServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RentalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("GetQuote", RentalServiceServer.GetQuote),
		unaryMethod("ListItem", RentalServiceServer.ListItem),
		unaryMethod("GetListing", RentalServiceServer.GetListing),
		unaryMethod("SearchListings", RentalServiceServer.SearchListings),
		unaryMethod("RentItem", RentalServiceServer.RentItem),
		unaryMethod("GetRental", RentalServiceServer.GetRental),
		unaryMethod("ListMyRentals", RentalServiceServer.ListMyRentals),
		unaryMethod("ListMyLendings", RentalServiceServer.ListMyLendings),
		unaryMethod("ReturnItem", RentalServiceServer.ReturnItem),
		unaryMethod("GetProfile", RentalServiceServer.GetProfile),
		unaryMethod("UpdateProfile", RentalServiceServer.UpdateProfile),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fashionswap/v1/rental",
}

func RegisterRentalServiceServer(s grpc.ServiceRegistrar, srv RentalServiceServer) {
	s.RegisterService(&RentalServiceDesc, srv)
}

// RentalServiceClient calls fashionswap.v1.RentalService using the JSON codec.
type RentalServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRentalServiceClient(cc grpc.ClientConnInterface) *RentalServiceClient {
	return &RentalServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *RentalServiceClient, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RentalServiceClient) GetQuote(ctx context.Context, in *QuoteRequest, opts ...grpc.CallOption) (*QuoteResponse, error) {
	return invoke[QuoteResponse](ctx, c, "GetQuote", in, opts)
}

func (c *RentalServiceClient) ListItem(ctx context.Context, in *ListItemRequest, opts ...grpc.CallOption) (*ListingResponse, error) {
	return invoke[ListingResponse](ctx, c, "ListItem", in, opts)
}

func (c *RentalServiceClient) GetListing(ctx context.Context, in *GetListingRequest, opts ...grpc.CallOption) (*ListingResponse, error) {
	return invoke[ListingResponse](ctx, c, "GetListing", in, opts)
}

func (c *RentalServiceClient) SearchListings(ctx context.Context, in *SearchListingsRequest, opts ...grpc.CallOption) (*SearchListingsResponse, error) {
	return invoke[SearchListingsResponse](ctx, c, "SearchListings", in, opts)
}

func (c *RentalServiceClient) RentItem(ctx context.Context, in *RentItemRequest, opts ...grpc.CallOption) (*RentItemResponse, error) {
	return invoke[RentItemResponse](ctx, c, "RentItem", in, opts)
}

func (c *RentalServiceClient) GetRental(ctx context.Context, in *GetRentalRequest, opts ...grpc.CallOption) (*RentalResponse, error) {
	return invoke[RentalResponse](ctx, c, "GetRental", in, opts)
}

func (c *RentalServiceClient) ListMyRentals(ctx context.Context, in *ListRentalsRequest, opts ...grpc.CallOption) (*ListRentalsResponse, error) {
	return invoke[ListRentalsResponse](ctx, c, "ListMyRentals", in, opts)
}

func (c *RentalServiceClient) ListMyLendings(ctx context.Context, in *ListRentalsRequest, opts ...grpc.CallOption) (*ListRentalsResponse, error) {
	return invoke[ListRentalsResponse](ctx, c, "ListMyLendings", in, opts)
}

func (c *RentalServiceClient) ReturnItem(ctx context.Context, in *ReturnItemRequest, opts ...grpc.CallOption) (*ReturnItemResponse, error) {
	return invoke[ReturnItemResponse](ctx, c, "ReturnItem", in, opts)
}

func (c *RentalServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c, "GetProfile", in, opts)
}

func (c *RentalServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c, "UpdateProfile", in, opts)
}
