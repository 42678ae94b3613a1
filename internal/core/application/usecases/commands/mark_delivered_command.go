package commands

import (
	"errors"
	"io"
	"strings"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"
	"pickup/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// Proof is an uploaded proof-of-delivery artifact. Size and type checks
// belong to the transport layer.
type Proof struct {
	Filename string
	Content  io.Reader
}

// MarkDeliveredCommand records the hand-over by the assigned picker,
// optionally with a proof upload.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	pickerID kernel.UUID
	proof    *Proof

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand builds the command. proof may be nil.
func NewMarkDeliveredCommand(orderID, pickerID kernel.UUID, proof *Proof) (MarkDeliveredCommand, error) {
	cmd := MarkDeliveredCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		orderID.Validate(),
		pickerID.Validate(),
		cmd.setProof(proof),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	cmd.orderID = orderID
	cmd.pickerID = pickerID
	return cmd, nil
}

func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

func (c MarkDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c MarkDeliveredCommand) PickerID() kernel.UUID {
	return c.pickerID
}

// Proof returns the upload, or nil when none was attached.
func (c MarkDeliveredCommand) Proof() *Proof {
	return c.proof
}

func (c *MarkDeliveredCommand) setProof(proof *Proof) error {
	if proof == nil {
		return nil
	}
	if proof.Content == nil {
		return errs.NewValueIsRequiredError("proof_of_delivery")
	}
	if strings.TrimSpace(proof.Filename) == "" {
		return errs.NewValueIsRequiredError("proof_of_delivery filename")
	}
	c.proof = proof
	return nil
}
