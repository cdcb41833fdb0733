package importer

import "fmt"

// FileResult is the outcome of one input.
type FileResult struct {
	// Name is the input name.
	Name string

	// IDs are the records created for this input, in creation order. An
	// archive that failed part way keeps the IDs of the entries stored
	// before the failure.
	IDs []int64

	// Err is nil when the whole input was imported.
	Err error
}

// OK reports whether the input was imported completely.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// Report aggregates the outcome of one ImportAll call.
type Report struct {
	BatchID string
	Files   []FileResult

	// Succeeded and Failed count inputs; Records counts created records.
	Succeeded int
	Failed    int
	Records   int
}

// Failures returns the results of inputs that failed.
func (r *Report) Failures() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if !f.OK() {
			failed = append(failed, f)
		}
	}
	return failed
}

// IDs returns every record identity created by the batch.
func (r *Report) IDs() []int64 {
	ids := []int64{}
	for _, f := range r.Files {
		ids = append(ids, f.IDs...)
	}
	return ids
}

// Summary is a one-line description of the batch outcome.
func (r *Report) Summary() string {
	return fmt.Sprintf("imported %d of %d file(s), %d record(s) created, %d failed",
		r.Succeeded, len(r.Files), r.Records, r.Failed)
}

func (r *Report) add(res FileResult) {
	r.Files = append(r.Files, res)
	r.Records += len(res.IDs)
	if res.OK() {
		r.Succeeded++
	} else {
		r.Failed++
	}
}
