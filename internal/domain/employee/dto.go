package employee

// Response is the JSON shape of a directory record.
type Response struct {
	StaffID          int64  `json:"staff_id"`
	StaffFName       string `json:"staff_fname"`
	StaffLName       string `json:"staff_lname"`
	Dept             string `json:"dept"`
	Position         string `json:"position"`
	Country          string `json:"country"`
	Email            string `json:"email"`
	ReportingManager int64  `json:"reporting_manager"`
	Role             int    `json:"role"`
}

func ToResponse(e Employee) Response {
	return Response{
		StaffID:          e.StaffID,
		StaffFName:       e.FirstName,
		StaffLName:       e.LastName,
		Dept:             e.Dept,
		Position:         e.Position,
		Country:          e.Country,
		Email:            e.Email,
		ReportingManager: e.ReportingManager,
		Role:             e.RoleCode,
	}
}

func ToResponseList(employees []Employee) []Response {
	out := make([]Response, 0, len(employees))
	for _, e := range employees {
		out = append(out, ToResponse(e))
	}
	return out
}
