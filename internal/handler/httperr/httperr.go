package httperr

// Response is the envelope every non-2xx JSON body uses. Status travels out
// of band; only the error message and optional detail are serialized.
type Response struct {
	Status int     `json:"-"`
	Error  Message `json:"error"`
	Detail any     `json:"detail,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

func NewResponse(status int, msg string, detail any) Response {
	return Response{
		Status: status,
		Error:  Message{Message: msg},
		Detail: detail,
	}
}
