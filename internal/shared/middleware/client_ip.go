package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ContextKeyClientIP = "client_ip"

// ClientIP records the originating address for session audit rows.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyClientIP, extractIPAddress(c.Request))
		c.Next()
	}
}

// GetClientIP returns the address recorded by ClientIP.
func GetClientIP(c *gin.Context) string {
	v, exists := c.Get(ContextKeyClientIP)
	if !exists {
		return c.ClientIP()
	}

	ip, _ := v.(string)
	return ip
}

func extractIPAddress(r *http.Request) string {
	// Reverse proxies set X-Real-IP; X-Forwarded-For may hold a chain where
	// the first entry is the original client.
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
