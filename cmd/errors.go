package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"tokount/internal/apperr"
)

type errorBody struct {
	Kind    apperr.Kind       `json:"kind"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

type errorPayload struct {
	Error errorBody `json:"error"`
}

// WriteError 把错误渲染为单行 JSON 错误载荷。
// 未分类的错误（例如 cobra 的参数解析错误）按 InvalidArgs 处理。
func WriteError(writer io.Writer, err error) {
	body := errorBody{Kind: apperr.InvalidArgs, Message: err.Error()}
	if appErr, ok := apperr.As(err); ok {
		body = errorBody{Kind: appErr.Kind, Message: appErr.Message, Details: appErr.Details}
	}

	content, marshalErr := json.Marshal(errorPayload{Error: body})
	if marshalErr != nil {
		_, _ = fmt.Fprintf(writer, "{\"error\":{\"kind\":\"SerializeError\",\"message\":%q}}\n", marshalErr.Error())
		return
	}
	_, _ = fmt.Fprintln(writer, string(content))
}
