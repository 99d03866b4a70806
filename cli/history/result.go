package clihistory

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
)

type historyItem struct {
	ItemID     string             `json:"itemId"`
	Kind       common.ItemKind    `json:"kind"`
	Account    string             `json:"account"`
	SrcChainID common.ChainID     `json:"srcChainId"`
	DstChainID common.ChainID     `json:"destChainId"`
	SrcTxHash  string             `json:"srcTxHash,omitempty"`
	DstTxHash  string             `json:"destTxHash,omitempty"`
	StartTime  time.Time          `json:"startTime"`
	Completed  *time.Time         `json:"completionTime,omitempty"`
	Status     common.StatusValue `json:"status"`
}

type historyCmdResult struct {
	Account string        `json:"account,omitempty"`
	Items   []historyItem `json:"items"`
}

func newHistoryCmdResult(account string, records map[string]common.HistoryRecord) *historyCmdResult {
	items := make([]historyItem, 0, len(records))

	for _, record := range records {
		item := historyItem{
			ItemID:     record.ItemID,
			Kind:       record.Kind(),
			Account:    record.Account,
			SrcChainID: record.Quote.SrcChainID,
			DstChainID: record.Quote.DestChainID,
			SrcTxHash:  record.Status.SrcChain.TxHash,
			StartTime:  record.StartTime,
			Completed:  record.CompletionTime,
			Status:     record.Status.Status,
		}

		if record.Status.DestChain != nil {
			item.DstTxHash = record.Status.DestChain.TxHash
		}

		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].StartTime.Equal(items[j].StartTime) {
			return items[i].ItemID < items[j].ItemID
		}

		return items[i].StartTime.After(items[j].StartTime)
	})

	return &historyCmdResult{
		Account: account,
		Items:   items,
	}
}

func (r historyCmdResult) GetOutput() string {
	rows := make([]string, 0, len(r.Items)+1)
	rows = append(rows, "Item|Kind|Route|Source Tx|Destination Tx|Started|Status")

	for _, item := range r.Items {
		rows = append(rows, fmt.Sprintf("%s|%s|%s -> %s|%s|%s|%s|%s",
			item.ItemID, item.Kind, item.SrcChainID, item.DstChainID,
			valueOrDash(item.SrcTxHash), valueOrDash(item.DstTxHash),
			item.StartTime.Local().Format(time.DateTime), common.FormatStatusValue(item.Status)))
	}

	title := "History"
	if r.Account != "" {
		title = "History of " + r.Account
	}

	var buffer bytes.Buffer

	buffer.WriteString(common.FormatSection(title, common.FormatList(rows)))
	buffer.WriteString(fmt.Sprintf("\n%d item(s)\n", len(r.Items)))

	return buffer.String()
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}

	return value
}
