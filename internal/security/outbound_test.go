package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewOutboundClient_Timeout(t *testing.T) {
	timeout := 15 * time.Second
	client := NewOutboundClient(timeout)
	if client == nil {
		t.Fatal("NewOutboundClient() returned nil")
	}
	if client.Timeout != timeout {
		t.Errorf("Timeout = %v, want %v", client.Timeout, timeout)
	}
	if client.Transport == nil || client.Transport == http.DefaultTransport {
		t.Error("expected custom Transport with dial-time address checks")
	}
}

// httptestサーバーは127.0.0.1で起動されるため、接続はブロックされる
func TestNewOutboundClient_BlocksLoopback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewOutboundClient(5 * time.Second)
	resp, err := client.Get(ts.URL)
	if err == nil {
		resp.Body.Close()
		t.Fatal("expected loopback request to be blocked, got nil error")
	}
}

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"congress api", "https://api.congress.gov/v3", false},
		{"huggingface", "https://api-inference.huggingface.co/models/facebook/bart-large-cnn", false},
		{"empty", "", true},
		{"ftp scheme", "ftp://api.congress.gov/v3", true},
		{"no host", "https:///v3", true},
		{"loopback ip", "http://127.0.0.1:8080/v3", true},
		{"localhost", "http://LOCALHOST/v3", true},
		{"private ip", "https://10.1.2.3/v3", true},
		{"metadata ip", "http://169.254.169.254/latest/meta-data", true},
		{"ipv6 loopback", "http://[::1]/v3", true},
		{"public ip", "https://8.8.8.8/v3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEndpoint(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpoint(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
