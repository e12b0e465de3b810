// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps methods to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Catalog browsing - Public
	"/fashionswap.v1.RentalService/GetQuote":       SecurityPublic,
	"/fashionswap.v1.RentalService/GetListing":     SecurityPublic,
	"/fashionswap.v1.RentalService/SearchListings": SecurityPublic,

	// Listing and renting - Access Protected
	"/fashionswap.v1.RentalService/ListItem":       SecurityAccess,
	"/fashionswap.v1.RentalService/RentItem":       SecurityAccess,
	"/fashionswap.v1.RentalService/GetRental":      SecurityAccess,
	"/fashionswap.v1.RentalService/ListMyRentals":  SecurityAccess,
	"/fashionswap.v1.RentalService/ListMyLendings": SecurityAccess,
	"/fashionswap.v1.RentalService/ReturnItem":     SecurityAccess,

	// Profile - Access Protected
	"/fashionswap.v1.RentalService/GetProfile":    SecurityAccess,
	"/fashionswap.v1.RentalService/UpdateProfile": SecurityAccess,
}

// GetSecurityLevel returns the security level for a given method
func GetSecurityLevel(method string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
