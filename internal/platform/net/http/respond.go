// Package http provides the router seam, the server and the JSON envelope every endpoint answers with
package http

import (
	"encoding/json"
	"mime"
	stdhttp "net/http"
	"strconv"

	perr "linetrack/internal/platform/errors"
	pnet "linetrack/internal/platform/net"
)

// Envelope is the standard response body for all endpoints
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers hand back
// Body may be an error, an Attachment or any JSON value
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}

	env := Envelope{RequestID: pnet.RequestID(r.Context())}
	switch body := resp.Body.(type) {
	case Attachment:
		body.write(w, status)
		return
	case error:
		status = perr.HTTPStatus(body)
		wr := perr.WireFrom(body)
		env.Code, env.Error = wr.Code, wr.Message
	default:
		env.Data = body
	}
	env.StatusCode = status
	env.Status = stdhttp.StatusText(status)
	JSON(w, status, env)
}

// Attachment is a raw download sent without the envelope
type Attachment struct {
	Name        string
	ContentType string
	Body        []byte
}

func (a Attachment) write(w stdhttp.ResponseWriter, status int) {
	ct := a.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := w.Header()
	h.Set("Content-Type", ct)
	h.Set("Content-Length", strconv.Itoa(len(a.Body)))
	if a.Name != "" {
		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Name}))
	}
	w.WriteHeader(status)
	_, _ = w.Write(a.Body)
}

// File returns a 200 response that downloads body under name
func File(name, contentType string, body []byte) Response {
	return Response{Status: stdhttp.StatusOK, Body: Attachment{Name: name, ContentType: contentType, Body: body}}
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// Error returns a response that maps err to a status and an error envelope
func Error(err error) Response { return Response{Body: err} }
