package api

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIResponse is the uniform response envelope
type APIResponse struct {
	Status int         `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data,omitempty"`
}

// OK writes a success envelope
func OK(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &APIResponse{Status: 0, Msg: "success", Data: data})
}

// Created writes a success envelope with a 201 status
func Created(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, &APIResponse{Status: 0, Msg: "created", Data: data})
}

// Fail writes an error envelope with the given HTTP status
func Fail(w http.ResponseWriter, r *http.Request, httpStatus int, msg string) {
	render.Status(r, httpStatus)
	render.JSON(w, r, &APIResponse{Status: httpStatus, Msg: msg})
}
