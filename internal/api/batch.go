package api

import (
	"context"
	"sync"
)

// DeviceDataResult is one item of a batch telemetry fetch. Exactly one
// of Data and Err is set.
type DeviceDataResult struct {
	Ref  DeviceRef
	Data *DeviceTelemetry
	Err  error
}

// GetDeviceLastDataBatch fetches the latest telemetry for every device
// in refs concurrently. Results are positional: results[i] corresponds
// to refs[i] regardless of completion order, and a failing item never
// aborts the rest of the batch.
func (c *Client) GetDeviceLastDataBatch(ctx context.Context, refs []DeviceRef) []DeviceDataResult {
	results := make([]DeviceDataResult, len(refs))

	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref DeviceRef) {
			defer wg.Done()
			data, err := c.GetDeviceLastData(ctx, ref)
			results[i] = DeviceDataResult{Ref: ref, Data: data, Err: err}
		}(i, ref)
	}
	wg.Wait()

	return results
}
