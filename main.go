package main

import "taskdesk.com/taskdesk/cmd"

func main() {
	cmd.Execute()
}
