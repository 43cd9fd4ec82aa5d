package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/taskagile/internal/pkg/router.middlewareRecoverer.func1.1()
	/app/internal/pkg/router/middleware_recover.go:28 +0x45
panic({0x1, 0x2})
	/usr/local/go/src/runtime/panic.go:792 +0x132
github.com/shandysiswandi/taskagile/internal/registration/inbound.(*HTTPEndpoint).Register(...)
	/app/internal/registration/inbound/http_endpoint.go:40
`)

	assert.Equal(t, []string{
		"internal/pkg/router/middleware_recover.go:28",
		"internal/registration/inbound/http_endpoint.go:40",
	}, InternalPaths(stack))

	assert.Empty(t, InternalPaths(nil))
}
