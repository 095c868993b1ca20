/*
Copyright 2021-2026 the rans-go authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package histogram

import (
	"fmt"
	"sync"

	rans "github.com/rans-codec/rans-go"
)

// FromSamplesParallel builds a DenseHistogram from the samples using up to
// 'jobs' goroutines. The input is partitioned into contiguous chunks, each
// chunk is counted independently and the partial histograms are merged.
// Merging is commutative, so the result is identical to a sequential build.
func FromSamplesParallel(samples []int32, jobs uint) (*DenseHistogram, error) {
	if jobs == 0 {
		return nil, fmt.Errorf("Invalid number of jobs: %d", jobs)
	}

	if jobs == 1 || len(samples) < 1024 {
		return DenseFromSamples(samples)
	}

	if uint(len(samples)) < jobs {
		jobs = uint(len(samples))
	}

	sizes := rans.ComputeJobsPerTask(make([]uint, jobs), uint(len(samples)), jobs)
	parts := make([]*DenseHistogram, jobs)
	errs := make([]error, jobs)
	var wg sync.WaitGroup
	offset := 0

	for t := uint(0); t < jobs; t++ {
		chunk := samples[offset : offset+int(sizes[t])]
		offset += int(sizes[t])
		wg.Add(1)

		go func(task uint, data []int32) {
			defer wg.Done()
			parts[task], errs[task] = DenseFromSamples(data)
		}(t, chunk)
	}

	wg.Wait()
	res := parts[0]

	if errs[0] != nil {
		return nil, errs[0]
	}

	for t := uint(1); t < jobs; t++ {
		if errs[t] != nil {
			return nil, errs[t]
		}

		if err := res.Merge(parts[t]); err != nil {
			return nil, err
		}
	}

	return res, nil
}
