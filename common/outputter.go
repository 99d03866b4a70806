package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
)

const JSONOutputFlag = "json"

type ICommandResult interface {
	GetOutput() string
}

type OutputFormatter interface {
	io.Writer
	SetError(err error)
	SetCommandResult(result ICommandResult)
	WriteOutput()
}

func InitializeOutputter(cmd *cobra.Command) OutputFormatter {
	if shouldOutputJSON(cmd) {
		return newJSONOutput()
	}

	return newCLIOutput()
}

func shouldOutputJSON(cmd *cobra.Command) bool {
	flag := cmd.Flag(JSONOutputFlag)
	if flag == nil {
		return false
	}

	return flag.Changed
}

type commonOutputFormatter struct {
	errorOutput   error
	commandOutput ICommandResult
}

func (c *commonOutputFormatter) SetError(err error) {
	c.errorOutput = err
}

func (c *commonOutputFormatter) SetCommandResult(result ICommandResult) {
	c.commandOutput = result
}

type cliOutput struct {
	commonOutputFormatter
}

func newCLIOutput() *cliOutput {
	return &cliOutput{}
}

func (cli *cliOutput) WriteOutput() {
	if cli.errorOutput != nil {
		_, _ = fmt.Fprintln(os.Stderr, cli.errorOutput.Error())

		return
	}

	if cli.commandOutput != nil {
		_, _ = fmt.Fprintln(os.Stdout, cli.commandOutput.GetOutput())
	}
}

func (cli *cliOutput) Write(p []byte) (n int, err error) {
	return os.Stdout.Write(p)
}

type jsonOutput struct {
	commonOutputFormatter
}

func newJSONOutput() *jsonOutput {
	return &jsonOutput{}
}

func (jo *jsonOutput) WriteOutput() {
	if jo.errorOutput != nil {
		_, _ = fmt.Fprintln(os.Stderr, jo.getErrorOutput())

		return
	}

	if jo.commandOutput != nil {
		_, _ = fmt.Fprintln(os.Stdout, jo.getCommandOutput())
	}
}

func (jo *jsonOutput) Write(p []byte) (n int, err error) {
	// intermediate progress messages are not part of the json result
	return len(p), nil
}

func (jo *jsonOutput) getErrorOutput() string {
	return marshalJSONToString(struct {
		Err string `json:"error"`
	}{
		Err: jo.errorOutput.Error(),
	})
}

func (jo *jsonOutput) getCommandOutput() string {
	return marshalJSONToString(jo.commandOutput)
}

func marshalJSONToString(input interface{}) string {
	bytes, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return err.Error()
	}

	return string(bytes)
}

func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}

func FormatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"

	return columnize.Format(in, columnConf)
}

func FormatSection(title string, body string) string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[")
	buffer.WriteString(title)
	buffer.WriteString("]\n")
	buffer.WriteString(body)
	buffer.WriteString("\n")

	return buffer.String()
}

func FormatStatusValue(status StatusValue) string {
	switch status {
	case StatusComplete:
		return color.GreenString(string(status))
	case StatusPending:
		return color.YellowString(string(status))
	case StatusFailed:
		return color.RedString(string(status))
	default:
		return string(status)
	}
}
