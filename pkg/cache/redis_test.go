package cache

import (
	"errors"
	"net"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/nestview/pkg/httputil"
)

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("nil should stay nil")
	}
	if !errors.Is(classify(redis.Nil), redis.Nil) {
		t.Error("redis.Nil marks a miss and must pass through")
	}
	if classify(redis.ErrClosed) != ErrClosed {
		t.Error("closed client should map to ErrClosed")
	}

	netErr := classify(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
	if !httputil.IsRetryable(netErr) || !errors.Is(netErr, ErrNetwork) {
		t.Errorf("network failure should be retryable ErrNetwork: %v", netErr)
	}

	other := errors.New("WRONGTYPE")
	if classify(other) != other || httputil.IsRetryable(classify(other)) {
		t.Error("server errors are returned as-is")
	}
}
