package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxBodySize - ограничение тела запроса
const maxBodySize = 1 << 20

// Decode читает JSON тело запроса. Неизвестные поля и лишние данные после объекта - ошибка
func Decode[T any](body io.Reader) (T, error) {
	var payload T

	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&payload); err != nil {
		return payload, fmt.Errorf("decode request: %w", err)
	}
	if dec.More() {
		return payload, errors.New("decode request: unexpected data after body")
	}

	return payload, nil
}
