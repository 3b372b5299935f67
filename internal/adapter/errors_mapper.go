package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	respErr := &ResponseError{Status: resp.StatusCode()}

	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		respErr.Message = body.Error
		respErr.Fields = body.Fields
	} else {
		respErr.Message = strings.TrimSpace(string(resp.Body()))
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		respErr.Kind = ErrBadRequest
	case http.StatusUnauthorized:
		respErr.Kind = ErrUnauthorized
	case http.StatusForbidden:
		respErr.Kind = ErrForbidden
	case http.StatusNotFound:
		respErr.Kind = ErrNotFound
	case http.StatusConflict:
		respErr.Kind = ErrConflict
	case http.StatusBadGateway:
		respErr.Kind = ErrBadGateway
	case http.StatusInternalServerError:
		respErr.Kind = ErrInternalServerError
	default:
		respErr.Kind = ErrUnexpectedStatus
		if respErr.Message == "" {
			respErr.Message = http.StatusText(resp.StatusCode())
		}
	}

	return respErr
}
