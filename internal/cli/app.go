package cli

// App is the habitctl command tree.
type App struct {
	APIURL string `name:"api-url" env:"HABIT_API_URL" default:"http://localhost:8000/api" help:"Base URL of the habit tracker API."`

	Register RegisterCmd `cmd:"" help:"Create an account."`
	Login    LoginCmd    `cmd:"" help:"Log in and store the access token in the OS keyring."`
	Logout   LogoutCmd   `cmd:"" help:"Forget the stored access token."`
	Habits   HabitsCmd   `cmd:"" help:"Manage habits."`
	Checkin  CheckinCmd  `cmd:"" help:"Record today's check-in for a habit."`
	History  HistoryCmd  `cmd:"" help:"Show the last 30 check-ins of a habit."`
}
