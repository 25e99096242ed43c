package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"taskdesk.com/taskdesk/internal/constants"
	"taskdesk.com/taskdesk/internal/forms"
	"taskdesk.com/taskdesk/internal/services"
	"taskdesk.com/taskdesk/internal/ui"
	model "taskdesk.com/taskdesk/pkg/models"
)

// taskFields maps form field names to their flag names.
var taskFields = map[string]string{
	"title":       "title",
	"description": "description",
	"priority":    "priority",
	"status":      "status",
	"dueDate":     "due",
	"category":    "category",
	"tags":        "tags",
}

var (
	listQuery    string
	listStatus   string
	listPriority string
	listCategory string

	deleteYes bool
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"task", "t"},
	Short:   "List and change your tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered",
	Long: "List tasks. Only one filter is applied by the server, in this order: " +
		"--query, --status, --priority, --category.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTasks(cmd, func(svc *services.TaskService) error {
			criteria := svc.Criteria()
			criteria.Query = listQuery
			criteria.Status = constants.TaskStatus(strings.ToUpper(listStatus))
			criteria.Priority = constants.TaskPriority(strings.ToUpper(listPriority))
			criteria.Category = listCategory

			if err := svc.Search(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.TaskList(svc.Tasks(), time.Now()))
			return nil
		})
	},
}

var tasksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTasks(cmd, func(svc *services.TaskService) error {
			if err := applyTaskFlags(svc.Form(), cmd.Flags()); err != nil {
				return err
			}
			return svc.Save(cmd.Context())
		})
	},
}

var tasksEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the fields given as flags, keep the rest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTasks(cmd, func(svc *services.TaskService) error {
			task, err := loadTask(cmd, svc, model.ID(args[0]))
			if err != nil {
				return err
			}

			svc.Edit(task)
			if err := applyTaskFlags(svc.Form(), cmd.Flags()); err != nil {
				return err
			}
			return svc.Save(cmd.Context())
		})
	},
}

var tasksCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTasks(cmd, func(svc *services.TaskService) error {
			task, err := loadTask(cmd, svc, model.ID(args[0]))
			if err != nil {
				return err
			}
			return svc.MarkComplete(cmd.Context(), task.ID)
		})
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTasks(cmd, func(svc *services.TaskService) error {
			confirm := promptConfirm(cmd.InOrStdin(), cmd.ErrOrStderr())
			if deleteYes {
				confirm = func(string) bool { return true }
			}

			err := svc.Delete(cmd.Context(), model.ID(args[0]), confirm)
			if errors.Is(err, services.ErrCancelled) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
				return nil
			}
			return err
		})
	},
}

var tasksCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTasks(cmd, func(svc *services.TaskService) error {
			if err := svc.LoadCategories(cmd.Context()); err != nil {
				return err
			}
			for _, c := range svc.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		})
	},
}

func withTasks(cmd *cobra.Command, fn func(svc *services.TaskService) error) error {
	return withApp(cmd.Context(), func(a *app) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		return fn(services.NewTaskService(a.api, a.notifier(), logger))
	})
}

// loadTask fetches the list and picks one task out of it. The API has no
// single-task read.
func loadTask(cmd *cobra.Command, svc *services.TaskService, id model.ID) (model.Task, error) {
	if err := svc.Load(cmd.Context()); err != nil {
		return model.Task{}, err
	}
	task, ok := svc.Task(id)
	if !ok {
		return model.Task{}, fmt.Errorf("task %s: %w", id, services.ErrTaskNotLoaded)
	}
	return task, nil
}

// applyTaskFlags copies every flag the user set into the form.
func applyTaskFlags(form *forms.TaskForm, flags *pflag.FlagSet) error {
	for field, name := range taskFields {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		switch field {
		case "priority", "status":
			value = strings.ToUpper(value)
		}
		if err := form.Set(field, value); err != nil {
			return err
		}
	}
	return nil
}

func addTaskFlags(flags *pflag.FlagSet) {
	flags.String(taskFields["title"], "", "task title")
	flags.String(taskFields["description"], "", "task description")
	flags.String(taskFields["priority"], "", "LOW, MEDIUM, HIGH or URGENT")
	flags.String(taskFields["status"], "", "PENDING, IN_PROGRESS, COMPLETED or CANCELLED")
	flags.String(taskFields["dueDate"], "", "due date as YYYY-MM-DD")
	flags.String(taskFields["category"], "", "category name")
	flags.String(taskFields["tags"], "", "comma separated tags")
}

// promptConfirm asks on w and reads a y/n answer from r.
func promptConfirm(r io.Reader, w io.Writer) services.ConfirmFunc {
	return func(prompt string) bool {
		fmt.Fprintf(w, "%s [y/N] ", prompt)
		line, _ := bufio.NewReader(r).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

func init() {
	tasksListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "text to look for in title or description")
	tasksListCmd.Flags().StringVar(&listStatus, "status", "", "only tasks with this status")
	tasksListCmd.Flags().StringVar(&listPriority, "priority", "", "only tasks with this priority")
	tasksListCmd.Flags().StringVar(&listCategory, "category", "", "only tasks in this category")

	addTaskFlags(tasksAddCmd.Flags())
	addTaskFlags(tasksEditCmd.Flags())

	tasksDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")

	tasksCmd.AddCommand(tasksListCmd, tasksAddCmd, tasksEditCmd, tasksCompleteCmd, tasksDeleteCmd, tasksCategoriesCmd)
	rootCmd.AddCommand(tasksCmd)
}
