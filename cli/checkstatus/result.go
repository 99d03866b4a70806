package clicheckstatus

import (
	"bytes"
	"fmt"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
)

type checkStatusCmdResult struct {
	Kind     common.ItemKind        `json:"kind"`
	Envelope *common.StatusEnvelope `json:"status"`
}

func (r checkStatusCmdResult) GetOutput() string {
	rows := []string{
		fmt.Sprintf("Kind|%s", r.Kind),
		fmt.Sprintf("Status|%s", common.FormatStatusValue(r.Envelope.Status)),
		fmt.Sprintf("Source Chain|%s", r.Envelope.SrcChain.ChainID),
		fmt.Sprintf("Source Tx|%s", r.Envelope.SrcChain.TxHash),
	}

	if r.Envelope.DestChain != nil {
		rows = append(rows,
			fmt.Sprintf("Destination Chain|%s", r.Envelope.DestChain.ChainID),
			fmt.Sprintf("Destination Tx|%s", r.Envelope.DestChain.TxHash))

		if r.Envelope.DestChain.Amount != "" {
			rows = append(rows, fmt.Sprintf("Destination Amount|%s", r.Envelope.DestChain.Amount))
		}
	}

	var buffer bytes.Buffer

	buffer.WriteString(common.FormatSection("Status", common.FormatKV(rows)))

	return buffer.String()
}
