// Package loader parses the dispatcher's input file into a queue of
// process records ready for admission.
package loader

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"hostd/internal/config"
	"hostd/internal/logging"
	"hostd/internal/process"
)

// Load reads line-delimited records from r, one per line, each of the
// form "arrival_time, priority, remaining_cpu_time, mbytes,
// num_printers, num_scanners, num_modems, num_cds" (eight non-negative
// integers). Malformed lines are logged and skipped rather than
// aborting the load. Priority values above config.LowestPriority are
// clamped with a diagnostic; real-time records (priority 0) with
// mbytes above config.RealTimeMaxMbytes are clamped and have every
// peripheral demand zeroed.
func Load(r io.Reader, log *logging.Logger) []*process.Record {
	var records []*process.Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, ok := parseLine(line, log)
		if !ok {
			log.Warn("invalid data in input file, skipping line", map[string]any{"line": line})
			continue
		}
		records = append(records, rec)
	}
	return records
}

func parseLine(line string, log *logging.Logger) (*process.Record, bool) {
	fields := strings.Split(line, ",")
	if len(fields) != 8 {
		return nil, false
	}
	values := make([]uint64, 8)
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}

	arrival := uint(values[0])
	priority := uint(values[1])
	remaining := uint(values[2])
	mbytes := uint(values[3])
	printers := uint(values[4])
	scanners := uint(values[5])
	modems := uint(values[6])
	cds := uint(values[7])

	if priority > config.LowestPriority {
		log.Warn("invalid priority, clamping to lowest priority", map[string]any{
			"priority": priority, "lowest": config.LowestPriority,
		})
		priority = config.LowestPriority
	}

	if priority == config.RealTimePriority && mbytes > config.RealTimeMaxMbytes {
		mbytes = config.RealTimeMaxMbytes
		printers, scanners, modems, cds = 0, 0, 0, 0
	}

	argv := []string{config.WorkerBinary, strconv.FormatUint(uint64(remaining), 10)}
	rec := process.New(arrival, priority, remaining, mbytes, printers, scanners, modems, cds, argv)
	return rec, true
}
