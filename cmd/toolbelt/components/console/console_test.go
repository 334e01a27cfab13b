package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/sergeii/toolbelt/cmd/toolbelt/application"
	"github.com/sergeii/toolbelt/cmd/toolbelt/components/console"
	tu "github.com/sergeii/toolbelt/internal/testutils"
)

func TestConsole_ShutsDownOnExit(t *testing.T) {
	var component *console.Component
	out := &bytes.Buffer{}

	app := fx.New(
		fx.Provide(tu.NoLogging),
		fx.Provide(tu.ProvideSettings),
		application.Module,
		fx.Supply(console.Config{
			Prompt: "$ ",
			In:     strings.NewReader("help\nexit\n"),
			Out:    out,
		}),
		console.Module,
		fx.NopLogger,
		fx.Populate(&component),
	)
	tu.MustNoErr(app.Start(context.TODO()))

	select {
	case <-component.Done():
	case <-time.After(time.Second * 5):
		t.Fatal("console session did not finish")
	}

	select {
	case <-app.Wait():
	case <-time.After(time.Second * 5):
		t.Fatal("application was not asked to shut down")
	}
	require.NoError(t, app.Stop(context.TODO()))

	assert.Contains(t, out.String(), "$ Available commands:")
}
