package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// TrustClientIPFrom limits which peers may set the client IP through
// forwarding headers. With no proxies and no platform the socket address is
// the client IP, so X-Forwarded-For and CF-Connecting-IP are ignored.
// platform is "cloudflare", "google" or empty.
func TrustClientIPFrom(engine *gin.Engine, proxies []string, platform string) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := engine.SetTrustedProxies(proxies); err != nil {
		return err
	}
	switch platform {
	case "":
		engine.TrustedPlatform = ""
	case "cloudflare":
		engine.TrustedPlatform = gin.PlatformCloudflare
	case "google":
		engine.TrustedPlatform = gin.PlatformGoogleAppEngine
	default:
		return fmt.Errorf("unknown trusted platform %q", platform)
	}
	return nil
}

// RealIP stores the client IP in the Gin context (key: "real_ip"). It relies
// on c.ClientIP, which honors forwarding headers only from trusted proxies;
// see TrustClientIPFrom.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}
