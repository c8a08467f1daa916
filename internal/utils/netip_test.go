package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.10 ", "::1", "not-an-ip", ""})

	tests := []struct {
		ip   string
		want bool
	}{
		{ip: "10.1.2.3", want: true},
		{ip: "11.0.0.1", want: false},
		{ip: "192.168.1.10", want: true},
		{ip: "192.168.1.11", want: false},
		{ip: "::ffff:10.0.0.1", want: true},
		{ip: "::1", want: true},
		{ip: "garbage", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := m.Allow(tt.ip); got != tt.want {
				t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}

func TestIPMatcherEmpty(t *testing.T) {
	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("NewIPMatcher(nil) should be empty")
	}
	if !NewIPMatcher([]string{"nope"}).IsEmpty() {
		t.Error("NewIPMatcher with only invalid entries should be empty")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "1.2.3.4:5678",
			want:       "1.2.3.4",
		},
		{
			name:       "forwarded header ignored without trust",
			remoteAddr: "1.2.3.4:5678",
			headers:    map[string]string{"X-Forwarded-For": "9.9.9.9"},
			want:       "1.2.3.4",
		},
		{
			name:       "first forwarded-for wins",
			remoteAddr: "127.0.0.1:1",
			headers:    map[string]string{"X-Forwarded-For": " 9.9.9.9, 8.8.8.8"},
			trustProxy: true,
			want:       "9.9.9.9",
		},
		{
			name:       "cloudflare header preferred",
			remoteAddr: "127.0.0.1:1",
			headers:    map[string]string{"CF-Connecting-IP": "7.7.7.7", "X-Forwarded-For": "9.9.9.9"},
			trustProxy: true,
			want:       "7.7.7.7",
		},
		{
			name:       "real ip fallback",
			remoteAddr: "127.0.0.1:1",
			headers:    map[string]string{"X-Real-IP": "6.6.6.6"},
			trustProxy: true,
			want:       "6.6.6.6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %v, want %v", got, tt.want)
			}
		})
	}
}
