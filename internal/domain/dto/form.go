package dto

// FormResponse is the JSON body every AJAX form endpoint answers with.
type FormResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

func Ok(message string) FormResponse {
	return FormResponse{Success: true, Message: message}
}

func Fail(message string) FormResponse {
	return FormResponse{Success: false, Message: message}
}

func (r FormResponse) WithRedirect(to string) FormResponse {
	r.Redirect = to
	return r
}
