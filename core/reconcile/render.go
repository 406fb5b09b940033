package reconcile

import (
	"bufio"
	"fmt"
	"io"
	"text/tabwriter"
)

// Render writes a human-readable transcript of r to w: a headline, then one
// line per finding in report order. Consecutive value mismatches are rendered
// as one aligned block. Machine callers should use the Report itself.
func Render(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "normalize periods: %t\n", r.NormalizedPeriods)
	if r.Identical {
		fmt.Fprintln(bw, "Datasets are identical.")
		return bw.Flush()
	}
	fmt.Fprintln(bw, "Datasets are different:")

	for i := 0; i < len(r.Findings); i++ {
		if _, ok := r.Findings[i].(ValueMismatch); !ok {
			fmt.Fprintln(bw, r.Findings[i].String())
			continue
		}

		fmt.Fprintln(bw, "Detailed element-wise differences:")
		tw := tabwriter.NewWriter(bw, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  row\tcolumn\ta\tb")
		for ; i < len(r.Findings); i++ {
			vm, ok := r.Findings[i].(ValueMismatch)
			if !ok {
				i--
				break
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", vm.Row, vm.Column, vm.ValueA, vm.ValueB)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return bw.Flush()
}
