package main

import "github.com/zzstudio/invoicedesk/cmd"

func main() {
	cmd.Execute()
}
