package domain

// BatchReport summarizes a bulk import run
type BatchReport struct {
	Successful int
	Failed     int
	Errors     []string
}

// Fail records one failed item
func (r *BatchReport) Fail(msg string) {
	r.Failed++
	r.Errors = append(r.Errors, msg)
}

// Progress is emitted before each lookup of a word-list import
type Progress struct {
	Current int
	Total   int
	Word    string
}
