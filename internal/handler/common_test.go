package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"go-gin-ticket-store/internal/model"

	"github.com/gin-gonic/gin"
)

var (
	InvalidJSON = `{"invalid": json}`
)

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

// fakeAuth 測試用認證中介層, 直接塞入指定 principal
// key 需與 middleware.RequireAuth 寫入的一致
func fakeAuth(user *model.AuthUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("authUser", user)
		c.Next()
	}
}

func passthrough() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}
