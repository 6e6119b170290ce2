package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/infrastructure/config"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
)

// SwaggerProtection guards the API docs: 404 when disabled, 403 for clients
// outside AllowedIPs. Entries may be single IPs or CIDR ranges; an empty list
// allows everyone.
func SwaggerProtection(cfg config.SwaggerConfig) gin.HandlerFunc {
	var (
		allowedNets []*net.IPNet
		allowedIPs  []net.IP
	)
	for _, entry := range cfg.AllowedIPs {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				allowedNets = append(allowedNets, network)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			allowedIPs = append(allowedIPs, ip)
		}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(
				dto.ErrCodeNotFound, "API documentation is not available"))
			return
		}
		if len(cfg.AllowedIPs) > 0 && !isIPAllowed(clientIP(c), allowedIPs, allowedNets) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden, "Access to API documentation is restricted"))
			return
		}
		c.Next()
	}
}

func clientIP(c *gin.Context) net.IP {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}

func isIPAllowed(ip net.IP, allowedIPs []net.IP, allowedNets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range allowedIPs {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range allowedNets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
