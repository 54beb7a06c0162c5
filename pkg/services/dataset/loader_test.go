package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Order ID,Order Date,Product Name,Category,Region,Customer Name,Sales,Quantity,Profit\n" +
	"CA-1,1/5/2024,Stapler,Office Supplies,South,Claire Gute,12.5,3,4.1\n" +
	"CA-2,2/7/2024,Bookcase,Furniture,West,Darrin Van Huff,261.96,2,-41.9\n"

type mockObjectGetter struct {
	mock.Mock
}

func (m *mockObjectGetter) GetObject(
	ctx context.Context,
	params *s3.GetObjectInput,
	optFns ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "superstore.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	loader := NewFileLoader(path, EncodingUTF8)
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, path, loader.Source())

	_, err = NewFileLoader(filepath.Join(t.TempDir(), "missing.csv"), EncodingUTF8).Load(context.Background())
	assert.Error(t, err)
}

func TestHTTPLoader(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		rows    int
		wantErr bool
	}{
		{
			name: "ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, sampleCSV)
			},
			rows: 2,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			ds, err := NewHTTPLoader(srv.URL, EncodingLatin1, nil).Load(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, ds.Len())
		})
	}
}

func TestS3Loader(t *testing.T) {
	client := new(mockObjectGetter)
	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Bucket == "retail" && *in.Key == "exports/superstore.csv"
	})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(sampleCSV))}, nil)

	loader := NewS3Loader(client, "retail", "exports/superstore.csv", EncodingUTF8)
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "s3://retail/exports/superstore.csv", loader.Source())
	client.AssertExpectations(t)
}

func TestS3Loader_Error(t *testing.T) {
	client := new(mockObjectGetter)
	client.On("GetObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := NewS3Loader(client, "retail", "superstore.csv", EncodingUTF8).Load(context.Background())
	assert.ErrorContains(t, err, "access denied")
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://retail/exports/2024/superstore.csv")
	require.NoError(t, err)
	assert.Equal(t, "retail", bucket)
	assert.Equal(t, "exports/2024/superstore.csv", key)

	for _, bad := range []string{"s3://retail", "https://retail/x.csv", "s3:///x.csv"} {
		_, _, err := ParseS3URI(bad)
		assert.ErrorIs(t, err, domain.ErrUnsupportedSource, bad)
	}
}
