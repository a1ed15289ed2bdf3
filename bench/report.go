// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"io"
)

// WriteSummary prints the per-matrix averages in list order.
func WriteSummary(w io.Writer, results []Result) error {
	if _, err := fmt.Fprint(w, "\nResult summary:\n"); err != nil {
		return err
	}
	for _, r := range results {
		var err error
		if r.Err != nil {
			_, err = fmt.Fprintf(w, "Matrix: %s. Failed: %v\n", r.Name, r.Err)
		} else {
			_, err = fmt.Fprintf(w, "Matrix: %s. Average time: %.2e seconds. Relative error: %.2e\n",
				r.Name, r.AverageTime(), r.Perf.RelativeError)
		}
		if err != nil {
			return err
		}
	}

	return nil
}
