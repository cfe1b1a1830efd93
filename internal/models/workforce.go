package models

// Workforce represents one department's headcount at a factory.
// Invariant: Present + OnLeave + Absent == Total, enforced at the API
// boundary rather than in storage.
type Workforce struct {
	ID         int64  `json:"id"`
	Department string `json:"department"`
	Total      int    `json:"total"`
	Present    int    `json:"present"`
	OnLeave    int    `json:"onLeave"`
	Absent     int    `json:"absent"`
	FactoryID  string `json:"factoryId"`
}

// WorkforceCreateRequest represents department creation request
type WorkforceCreateRequest struct {
	Department string `json:"department" binding:"required"`
	Total      int    `json:"total" binding:"min=0"`
	Present    int    `json:"present" binding:"min=0"`
	OnLeave    int    `json:"onLeave" binding:"min=0"`
	Absent     int    `json:"absent" binding:"min=0"`
	FactoryID  string `json:"factoryId" binding:"required"`
}

// Headcounts reports whether the request satisfies the headcount invariant
func (r WorkforceCreateRequest) Headcounts() bool {
	return r.Present+r.OnLeave+r.Absent == r.Total
}

// WorkforceUpdate enumerates the fields a PATCH may change. A patch that
// touches any headcount field must carry all four so the invariant can be
// checked without reading the current record first.
type WorkforceUpdate struct {
	Department *string `json:"department"`
	Total      *int    `json:"total" binding:"omitempty,min=0"`
	Present    *int    `json:"present" binding:"omitempty,min=0"`
	OnLeave    *int    `json:"onLeave" binding:"omitempty,min=0"`
	Absent     *int    `json:"absent" binding:"omitempty,min=0"`
}

// TouchesHeadcount reports whether any headcount field is set
func (u WorkforceUpdate) TouchesHeadcount() bool {
	return u.Total != nil || u.Present != nil || u.OnLeave != nil || u.Absent != nil
}

// CompleteHeadcount reports whether all four headcount fields are set
func (u WorkforceUpdate) CompleteHeadcount() bool {
	return u.Total != nil && u.Present != nil && u.OnLeave != nil && u.Absent != nil
}

// Headcounts reports whether the set headcount fields satisfy the invariant
func (u WorkforceUpdate) Headcounts() bool {
	return *u.Present+*u.OnLeave+*u.Absent == *u.Total
}

// Apply merges the set fields into dept
func (u WorkforceUpdate) Apply(dept *Workforce) {
	if u.Department != nil {
		dept.Department = *u.Department
	}
	if u.Total != nil {
		dept.Total = *u.Total
	}
	if u.Present != nil {
		dept.Present = *u.Present
	}
	if u.OnLeave != nil {
		dept.OnLeave = *u.OnLeave
	}
	if u.Absent != nil {
		dept.Absent = *u.Absent
	}
}
