package domain

type UploadStatus int

const (
	StatusUploaded UploadStatus = iota
	StatusSkipped
	StatusFailed
)

func (s UploadStatus) String() string {
	switch s {
	case StatusUploaded:
		return "uploaded"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UploadOutcome is the terminal result for one asset. Reason is only set for
// StatusFailed.
type UploadOutcome struct {
	Name   string
	Status UploadStatus
	Reason string
}

// UploadReport holds one outcome per submitted asset, in submission order.
type UploadReport []UploadOutcome

func (r UploadReport) Uploaded() int { return r.count(StatusUploaded) }
func (r UploadReport) Skipped() int  { return r.count(StatusSkipped) }
func (r UploadReport) Failed() int   { return r.count(StatusFailed) }

func (r UploadReport) count(s UploadStatus) int {
	n := 0
	for _, o := range r {
		if o.Status == s {
			n++
		}
	}
	return n
}

func (r UploadReport) FailedNames() []string {
	var names []string
	for _, o := range r {
		if o.Status == StatusFailed {
			names = append(names, o.Name)
		}
	}
	return names
}

type DownloadReport struct {
	Assets []LocalAsset
	Failed []string
}

type ExportReport struct {
	Listed   int
	Download DownloadReport
	Upload   UploadReport
}
