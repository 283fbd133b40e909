package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/command.schema.json
var commandSchemaJSON string

var commandSchema = jsonschema.MustCompileString("command.schema.json", commandSchemaJSON)

// DecodeCommand проверяет сырое сообщение клиента по JSON-схеме и разбирает его.
// Ошибка схемы содержит путь до проблемного поля.
func DecodeCommand(data []byte) (ClientCommand, error) {
	var cmd ClientCommand

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return cmd, fmt.Errorf("malformed command: %w", err)
	}
	if err := commandSchema.Validate(raw); err != nil {
		return cmd, fmt.Errorf("invalid command: %w", err)
	}

	if err := json.Unmarshal(data, &cmd); err != nil {
		return cmd, fmt.Errorf("malformed command: %w", err)
	}
	return cmd, nil
}
