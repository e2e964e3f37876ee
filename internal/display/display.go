// Package display renders the dispatcher's per-tick status table and
// startup banner, in the tabular idiom of the corpus's text/tabwriter
// reporting tools.
package display

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"hostd/internal/memory"
	"hostd/internal/process"
	"hostd/internal/resource"
	"hostd/internal/scheduler"
)

// PrintHelp writes the abbreviation/terminology banner once at startup,
// describing every column and status abbreviation used by PrintStatus.
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "====================================================================================================")
	fmt.Fprintln(w, "ABBREVIATIONS AND TERMINOLOGY")
	fmt.Fprintln(w, "====================================================================================================")
	fmt.Fprintln(w, "FIELDS")
	fmt.Fprintln(w, "\tID\t\tUnique identifier.")
	fmt.Fprintln(w, "\tPID\t\tProcess ID.")
	fmt.Fprintln(w, "\tARRIVE\t\tProcess arrival time.")
	fmt.Fprintln(w, "\tREMAIN\t\tRemaining CPU time.")
	fmt.Fprintln(w, "\tPRIOR\t\tProcess priority.")
	fmt.Fprintln(w, "\tMB\t\tMegabytes of memory required by process.")
	fmt.Fprintln(w, "\tMAB ID\t\tMemory allocation block currently allocated to process.")
	fmt.Fprintln(w, "\tPRINT\t\tNumber of printer resources required by process.")
	fmt.Fprintln(w, "\tSCAN\t\tNumber of scanner resources required by process.")
	fmt.Fprintln(w, "\tMODEM\t\tNumber of modem resources required by process.")
	fmt.Fprintln(w, "\tCD\t\tNumber of CD resources required by process.")
	fmt.Fprintln(w, "\tSTATUS\t\tCurrent status of process.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STATUSES")
	fmt.Fprintln(w, "\tACTIVE\t\tProcess is currently being executed.")
	fmt.Fprintln(w, "\tQUEUED-RT\tProcess is queued in the real time queue.")
	fmt.Fprintln(w, "\tQUEUED-RRQx\tProcess is queued in the feedback (round robin) queue with priority x and has not been started.")
	fmt.Fprintln(w, "\tSUSPENDED-RRQx\tProcess is queued in the feedback (round robin) queue with priority x and has been suspended.")
	fmt.Fprintln(w, "\tPENDING\t\tProcess is in the user job queue and has not yet been allocated memory or resources.")
	fmt.Fprintln(w, "\tUNLOADED\tProcess is in the input dispatcher queue and is not ready to be executed yet.")
	fmt.Fprintln(w, "====================================================================================================")
}

// row is one line of the status table.
type row struct {
	r      *process.Record
	status string
}

func mabIDColumn(r *process.Record) string {
	if !r.HasMemory() {
		return "(null)"
	}
	return strconv.FormatUint(uint64(r.MemoryBlockID), 10)
}

// PrintStatus renders the full process table for one tick: header,
// the active process, the real-time queue, each feedback queue (status
// depends on whether the record has ever been started), the user-job
// queue, and the input queue, in that order — matching the original
// dispatcher's reporting order.
func PrintStatus(w io.Writer, snap scheduler.Snapshot) {
	fmt.Fprintln(w, "====================================================================================================")
	fmt.Fprintf(w, "Time:\t\t\t%d\n", snap.Clock)
	fmt.Fprintln(w, "====================================================================================================")

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "ID\t| PID\tARRIVE\tREMAIN\tPRIOR\t| MB\tMAB ID\t| PRINT\tSCAN\tMODEM\tCD\t| STATUS")
	fmt.Fprintln(tw, "----------------------------------------------------------------------------------------------------")

	var rows []row
	if snap.Active != nil {
		rows = append(rows, row{snap.Active, "ACTIVE"})
	}
	for _, r := range snap.RealTime {
		rows = append(rows, row{r, "QUEUED-RT"})
	}
	for i, q := range snap.Feedback {
		for _, r := range q {
			status := fmt.Sprintf("QUEUED-RRQ%d", i+1)
			if r.Started() {
				status = fmt.Sprintf("SUSPENDED-RRQ%d", i+1)
			}
			rows = append(rows, row{r, status})
		}
	}
	for _, r := range snap.UserJob {
		rows = append(rows, row{r, "PENDING"})
	}
	for _, r := range snap.Input {
		rows = append(rows, row{r, "UNLOADED"})
	}

	for _, rr := range rows {
		r := rr.r
		fmt.Fprintf(tw, "%d\t| %d\t%d\t%d\t%d\t| %d\t%s\t| %d\t%d\t%d\t%d\t| %s\n",
			r.ID, r.ChildHandle, r.ArrivalTime, r.RemainingCPUTime, r.Priority,
			r.Mbytes, mabIDColumn(r),
			r.NumPrinters, r.NumScanners, r.NumModems, r.NumCDs, rr.status)
	}
	tw.Flush()
}

// PrintMemory dumps the arena's block list, gated behind --verbose.
func PrintMemory(w io.Writer, a *memory.Arena) {
	fmt.Fprintln(w, "---- memory allocation blocks ----")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tOFFSET\tSIZE\tALLOCATED")
	for _, b := range a.Blocks() {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%t\n", b.ID, b.Offset, b.Size, b.Allocated)
	}
	tw.Flush()
}

// PrintResources dumps the resource pool's unit list, gated behind
// --verbose.
func PrintResources(w io.Writer, p *resource.Pool) {
	fmt.Fprintln(w, "---- resource allocation units ----")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tHOLDER")
	for _, u := range p.Units() {
		holder := "(free)"
		if u.Held() {
			holder = strconv.FormatUint(uint64(u.Holder), 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.Kind, holder)
	}
	tw.Flush()
}

// PrintFinished writes the final summary line once the dispatcher has
// nothing left to process.
func PrintFinished(w io.Writer, clock uint) {
	fmt.Fprintf(w, "\nFinished processing. Total elapsed time is %d.\n", clock)
}
