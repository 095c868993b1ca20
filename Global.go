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

package rans

import (
	"errors"
	"math/bits"
)

// Log2 returns the integer part of log2(x)
func Log2(x uint32) (uint, error) {
	if x == 0 {
		return 0, errors.New("Cannot calculate log of a negative or null value")
	}

	return Log2NoCheck(x), nil
}

// Log2NoCheck does the same as Log2() minus a null check on input value
func Log2NoCheck(x uint32) uint {
	return uint(bits.Len32(x)) - 1
}

// CeilLog2 returns the smallest p such that 1<<p >= x.
// Returns 0 for x <= 1.
func CeilLog2(x uint32) uint {
	if x <= 1 {
		return 0
	}

	return uint(bits.Len32(x - 1))
}

// IsPowerOf2 returns true if the input value is a power of two
func IsPowerOf2(x uint32) bool {
	return x&(x-1) == 0
}

// RoundUpPowerOfTwo returns the smallest power of two greater than
// or equal to the input value
func RoundUpPowerOfTwo(x uint32) uint32 {
	x--
	x |= (x >> 1)
	x |= (x >> 2)
	x |= (x >> 4)
	x |= (x >> 8)
	x |= (x >> 16)
	return x + 1
}

// ComputeJobsPerTask computes the number of jobs associated with each task
// given a number of jobs available and a number of tasks to perform.
// The provided 'jobsPerTask' slice is returned as result.
func ComputeJobsPerTask(jobsPerTask []uint, jobs, tasks uint) []uint {
	if tasks == 0 {
		panic("Invalid number of tasks provided: 0")
	}

	if jobs == 0 {
		panic("Invalid number of jobs provided: 0")
	}

	var q, r uint

	if jobs <= tasks {
		q = 1
		r = 0
	} else {
		q = jobs / tasks
		r = jobs - q*tasks
	}

	for i := range jobsPerTask {
		jobsPerTask[i] = q
	}

	n := uint(0)

	for r != 0 {
		jobsPerTask[n]++
		r--
		n++

		if n == tasks {
			n = 0
		}
	}

	return jobsPerTask
}
