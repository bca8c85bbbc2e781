package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"rli-storage-service/internal/models"
	"rli-storage-service/internal/repository"
)

// Table is a flattened snapshot: row 0 holds the column headers, every
// following row holds scalar cells in the same order.
type Table [][]interface{}

// Sheet is a named Table, one per entity in a report.
type Sheet struct {
	Name  string
	Table Table
}

func uintCell(v *uint) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func intCell(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func timeCell(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// RLITable flattens RLI rows.
func RLITable(rows []models.RLI) Table {
	t := Table{{"id", "name", "time_location", "is_processing", "raw_rli_id"}}
	for _, r := range rows {
		t = append(t, []interface{}{r.ID, r.Name, timeCell(r.TimeLocation), r.IsProcessing, uintCell(r.RawRLIID)})
	}
	return t
}

// LinkedRLITable flattens LinkedRLI rows.
func LinkedRLITable(rows []models.LinkedRLI) Table {
	t := Table{{"id", "raster_rli_id", "file_id", "extent_id", "binding_attempt_number", "type_binding_method_id"}}
	for _, r := range rows {
		t = append(t, []interface{}{
			r.ID, uintCell(r.RasterRLIID), uintCell(r.FileID), uintCell(r.ExtentID),
			intCell(r.BindingAttemptNumber), uintCell(r.TypeBindingMethodID),
		})
	}
	return t
}

// TargetTable flattens Target rows.
func TargetTable(rows []models.Target) Table {
	t := Table{{"id", "number", "object_id", "raster_rli_id", "datetime_sending", "sppr_type_key"}}
	for _, r := range rows {
		t = append(t, []interface{}{
			r.ID, intCell(r.Number), uintCell(r.ObjectID), uintCell(r.RasterRLIID),
			timeCell(r.DatetimeSending), r.SpprTypeKey,
		})
	}
	return t
}

// MarkTable flattens Mark rows.
func MarkTable(rows []models.Mark) Table {
	t := Table{{"id", "coordinates_id", "datetime", "session_id"}}
	for _, r := range rows {
		t = append(t, []interface{}{r.ID, uintCell(r.CoordinatesID), r.Datetime, uintCell(r.SessionID)})
	}
	return t
}

// SessionReport collects everything recorded under a session into one sheet
// per entity. The session itself must exist.
func SessionReport(repos *repository.Repositories, sessionID uint) ([]Sheet, error) {
	if _, err := repos.Sessions.GetByID(sessionID); err != nil {
		return nil, err
	}
	rlis, err := repos.RLIs.GetBySessionID(sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "could not load rli rows")
	}
	linked, err := repos.LinkedRLIs.GetBySessionID(sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "could not load linked_rli rows")
	}
	targets, err := repos.Targets.GetBySessionID(sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "could not load target rows")
	}
	marks, err := repos.Marks.GetBySessionID(sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "could not load mark rows")
	}
	return []Sheet{
		{Name: "rli", Table: RLITable(rlis)},
		{Name: "linked_rli", Table: LinkedRLITable(linked)},
		{Name: "target", Table: TargetTable(targets)},
		{Name: "mark", Table: MarkTable(marks)},
	}, nil
}

// FindSheet returns the sheet with the given name.
func FindSheet(sheets []Sheet, name string) (Sheet, bool) {
	for _, s := range sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// FormatCell renders one scalar the way it appears in CSV output. Nil cells
// are empty and times use RFC 3339 in UTC.
func FormatCell(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case time.Time:
		return c.UTC().Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(c)
	case uint:
		return strconv.FormatUint(uint64(c), 10)
	case int:
		return strconv.Itoa(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return fmt.Sprint(c)
	}
}

// WriteCSV writes t to w, one record per row.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	for _, row := range t {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = FormatCell(cell)
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "failed to write csv record")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}
