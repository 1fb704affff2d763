package sheets

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	gsheets "google.golang.org/api/sheets/v4"
)

func newTestService(t *testing.T, srv *httptest.Server) *gsheets.Service {
	t.Helper()
	svc, err := gsheets.NewService(context.Background(), testOptions(srv)...)
	require.NoError(t, err)
	return svc
}
