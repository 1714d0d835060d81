package batch

// UserFailure records one skipped user for the batch report.
type UserFailure struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// Report aggregates the per-user results of one run. Processed = Delivered +
// Empty + Failed.
type Report struct {
	Processed int           `json:"processed"`
	Delivered int           `json:"delivered"`
	Empty     int           `json:"empty"`
	Failed    int           `json:"failed"`
	Failures  []UserFailure `json:"failures,omitempty"`
}

func (r *Report) add(res Result) {
	r.Processed++
	switch {
	case res.Err != nil:
		r.Failed++
		r.Failures = append(r.Failures, UserFailure{
			UserID: res.User.ID.String(),
			Email:  res.User.Email,
			Reason: res.Err.Error(),
		})
	case res.Digest.IsEmpty():
		r.Empty++
	default:
		r.Delivered++
	}
}
