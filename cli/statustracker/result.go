package clistatustracker

type CmdResult struct{}

func (r CmdResult) GetOutput() string {
	return "Status tracker has been stopped"
}
