package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/edgeroute/rewrite"
)

const originResponseEvent = `{"Records":[{"cf":{
	"config":{"eventType":"origin-response"},
	"request":{"uri":"/sub/missing.html","querystring":"a=1","headers":{"host":[{"key":"Host","value":"sub.branch.example.org"}]}},
	"response":{"status":"404","statusDescription":"Not Found","headers":{}}
}}]}`

func runInvoke(t *testing.T, stdin string, args ...string) (string, error) {
	var out bytes.Buffer

	rootApp.Writer = &out
	rootApp.Reader = strings.NewReader(stdin)
	t.Cleanup(func() {
		rootApp.Writer = os.Stdout
		rootApp.Reader = os.Stdin
	})

	argv := append([]string{appName, "--log-level", "error", "--hostname", "example.org", "invoke"}, args...)
	err := rootApp.RunContext(context.Background(), argv)

	return out.String(), err
}

func TestInvoke_File(t *testing.T) {
	name := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(name, []byte(originResponseEvent), 0o600))

	out, err := runInvoke(t, "", name)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"status":"302",
		"statusDescription":"Found",
		"headers":{"location":[{"key":"Location","value":"/missing.html?a=1&cloudfrontindex=true"}]}
	}`, out)
}

func TestInvoke_Stdin(t *testing.T) {
	event := `{"Records":[{"cf":{"request":{"uri":"/","querystring":"","headers":{"host":[{"value":"sub.branch.example.org"}]}}}}]}`

	out, err := runInvoke(t, event, "--lambda-event-type", "viewer-request", "-")
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"uri":"/sub/index.html",
		"querystring":"",
		"headers":{"host":[{"value":"sub.branch.example.org"}]}
	}`, out)
}

func TestInvoke_UnsupportedEvent(t *testing.T) {
	event := `{"Records":[{"cf":{"request":{"uri":"/","querystring":"","headers":{"host":[{"value":"sub.branch.example.org"}]}}}}]}`

	_, err := runInvoke(t, event)
	assert.ErrorIs(t, err, rewrite.ErrUnsupportedEventType)
}

func TestInvoke_TooManyArgs(t *testing.T) {
	_, err := runInvoke(t, "", "a.json", "b.json")
	assert.ErrorIs(t, err, errTooManyArgs)
}
