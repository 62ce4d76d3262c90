package api

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnoutzw/Anenji-smartess/internal/request"
	"github.com/arnoutzw/Anenji-smartess/internal/transport"
)

func batchRefs(n int) []DeviceRef {
	refs := make([]DeviceRef, n)
	for i := range refs {
		refs[i] = DeviceRef{
			PN:      fmt.Sprintf("P%d", i),
			Devcode: "2304",
			Devaddr: "1",
			SN:      fmt.Sprintf("SN%d", i),
		}
	}
	return refs
}

func TestClient_GetDeviceLastDataBatch(t *testing.T) {
	t.Run("results are positional", func(t *testing.T) {
		tr := &mockTransport{
			executeFn: func(req *request.SignedRequest) (*transport.Envelope, error) {
				sn := req.Values().Get("sn")
				return envelope(0, "ok", fmt.Sprintf(`{"pn":"x","sn":%q}`, sn)), nil
			},
		}
		client, _ := loginTestClient(t, tr)

		refs := batchRefs(16)
		results := client.GetDeviceLastDataBatch(context.Background(), refs)
		require.Len(t, results, len(refs))

		for i, res := range results {
			require.NoError(t, res.Err)
			assert.Equal(t, refs[i], res.Ref)
			assert.Equal(t, refs[i].SN, res.Data.SN)
		}
		assert.Equal(t, len(refs), tr.calls())
	})

	t.Run("one failing device does not abort the rest", func(t *testing.T) {
		tr := &mockTransport{
			executeFn: func(req *request.SignedRequest) (*transport.Envelope, error) {
				sn := req.Values().Get("sn")
				if sn == "SN1" {
					return envelope(12002, "no such device", ""), nil
				}
				return envelope(0, "ok", fmt.Sprintf(`{"sn":%q}`, sn)), nil
			},
		}
		client, _ := loginTestClient(t, tr)

		results := client.GetDeviceLastDataBatch(context.Background(), batchRefs(3))
		require.Len(t, results, 3)

		require.NoError(t, results[0].Err)
		require.NoError(t, results[2].Err)
		require.ErrorIs(t, results[1].Err, ErrDeviceNotFound)
		assert.Nil(t, results[1].Data)
	})

	t.Run("empty input", func(t *testing.T) {
		tr := &mockTransport{}
		client, _ := loginTestClient(t, tr)

		results := client.GetDeviceLastDataBatch(context.Background(), nil)
		assert.Empty(t, results)
		assert.Zero(t, tr.calls())
	})
}
