package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/CityProduction_Go/internal/logger"
)

// AuthMiddleware validates the API key on every non-public path
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, prefix := range PublicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size. Turn feeds carry every
// city of a game, so the limit is configurable.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// DetectorConfig tunes the suspicious activity detector
type DetectorConfig struct {
	FailedAuthAlert int
	RequestLimit    int
	Window          time.Duration
}

// DefaultDetectorConfig allows 1000 requests per IP per 5 minutes
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		FailedAuthAlert: DefaultFailedAuthAlert,
		RequestLimit:    DefaultRequestLimit,
		Window:          DefaultDetectorWindow,
	}
}

// SuspiciousActivityDetector counts failed logins and requests per IP within a window
type SuspiciousActivityDetector struct {
	mu               sync.Mutex
	cfg              DetectorConfig
	failedAuthByIP   map[string]int
	requestCountByIP map[string]int
	windowStart      time.Time
	now              func() time.Time
}

// NewSuspiciousActivityDetector creates a detector; zero fields in cfg take defaults
func NewSuspiciousActivityDetector(cfg DetectorConfig) *SuspiciousActivityDetector {
	def := DefaultDetectorConfig()
	if cfg.FailedAuthAlert <= 0 {
		cfg.FailedAuthAlert = def.FailedAuthAlert
	}
	if cfg.RequestLimit <= 0 {
		cfg.RequestLimit = def.RequestLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	return &SuspiciousActivityDetector{
		cfg:              cfg,
		failedAuthByIP:   make(map[string]int),
		requestCountByIP: make(map[string]int),
		windowStart:      time.Now(),
		now:              time.Now,
	}
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetIfWindowElapsed()
	s.failedAuthByIP[ip]++

	if s.failedAuthByIP[ip] >= s.cfg.FailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", s.failedAuthByIP[ip])
	}
}

// RecordRequest counts a request and reports whether it is within the limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetIfWindowElapsed()
	s.requestCountByIP[ip]++

	count := s.requestCountByIP[ip]
	if count <= s.cfg.RequestLimit {
		return true
	}
	if count%highRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", count, "window", s.cfg.Window)
	}
	return false
}

// requestCount returns the current window count for ip
func (s *SuspiciousActivityDetector) requestCount(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestCountByIP[ip]
}

// resetIfWindowElapsed must be called with mu held
func (s *SuspiciousActivityDetector) resetIfWindowElapsed() {
	if s.now().Sub(s.windowStart) > s.cfg.Window {
		clear(s.requestCountByIP)
		clear(s.failedAuthByIP)
		s.windowStart = s.now()
	}
}

// RateLimitMiddleware rejects clients that exceed the detector's request limit
func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP returns the client address. X-Forwarded-For is only honored when
// the direct peer is a trusted proxy, and then its rightmost hop is used.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !slices.Contains(trustedProxies, remoteIP) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
