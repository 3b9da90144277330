package cli

type RegisterCmd struct {
	Username string `arg:"" help:"Username (3-50 chars)."`
	Email    string `arg:"" help:"Email address."`
	Password string `required:"" env:"HABIT_PASSWORD" help:"Account password."`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	id, err := ctx.Client.Register(ctx.Ctx, c.Username, c.Email, c.Password)
	if err != nil {
		return err
	}
	ctx.printf("Registered %s (id %d). Run 'habitctl login %s' next.\n", c.Username, id, c.Email)
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Email address."`
	Password string `required:"" env:"HABIT_PASSWORD" help:"Account password."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	user, err := ctx.Client.Login(ctx.Ctx, c.Email, c.Password)
	if err != nil {
		return err
	}
	if err := ctx.Tokens.Set(ctx.Client.Token()); err != nil {
		return err
	}
	ctx.printf("Logged in as %s.\n", user.Username)
	return nil
}

// LogoutCmd only forgets the local token; issued tokens stay valid until
// they expire.
type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Tokens.Delete(); err != nil {
		return err
	}
	ctx.printf("Logged out.\n")
	return nil
}
