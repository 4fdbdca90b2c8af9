package carbonplan

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeOperations decodes operations from a stream of JSONL data, one
// operation per line, in order.
func DecodeOperations(r io.Reader) ([]Operation, error) {
	var ops []Operation
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		op, err := DecodeOperation(lineBytes)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading operations: %w", err)
	}
	return ops, nil
}

// DecodeOperation decodes a single JSON operation.
func DecodeOperation(data []byte) (Operation, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(data, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in line %q: %w", string(data), err)
	}

	switch identifier.Command {
	case CmdBudget:
		var temp struct {
			Amount *float64 `json:"amount"`
		}
		if err := json.Unmarshal(data, &temp); err != nil {
			return nil, err
		}
		if temp.Amount == nil {
			return nil, missingField(identifier.Command, "amount")
		}
		return SetTotalBudget{Amount: *temp.Amount}, nil
	case CmdTarget:
		var temp struct {
			Tonnes *float64 `json:"tonnes"`
		}
		if err := json.Unmarshal(data, &temp); err != nil {
			return nil, err
		}
		if temp.Tonnes == nil {
			return nil, missingField(identifier.Command, "tonnes")
		}
		return SetTarget{Tonnes: *temp.Tonnes}, nil
	case CmdFuture:
		var temp struct {
			Budgets []float64 `json:"budgets"`
		}
		if err := json.Unmarshal(data, &temp); err != nil {
			return nil, err
		}
		return SetFutureBudgets{Budgets: temp.Budgets}, nil
	case CmdAllocate:
		var temp struct {
			ID    string  `json:"id"`
			Spend float64 `json:"spend"`
		}
		if err := json.Unmarshal(data, &temp); err != nil {
			return nil, err
		}
		return SetAllocation{ID: temp.ID, Spend: temp.Spend}, nil
	case CmdReset:
		return ResetAllocations{}, nil
	case CmdFill:
		var temp struct {
			Category Category `json:"category"`
		}
		if err := json.Unmarshal(data, &temp); err != nil {
			return nil, err
		}
		return FillCategory{Category: temp.Category}, nil
	default:
		return nil, fmt.Errorf("%w: unknown command %q", ErrInvalidInput, identifier.Command)
	}
}

func missingField(cmd CommandType, field string) error {
	return fmt.Errorf("%w: %s operation without %q", ErrInvalidInput, cmd, field)
}

// EncodeOperation writes a single operation as a line of JSON.
func EncodeOperation(w io.Writer, op Operation) error {
	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("error encoding %s operation: %w", op.What(), err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
