package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/publiish/bio-did-seq/internal/app"
	"github.com/publiish/bio-did-seq/internal/config"
	userUsecase "github.com/publiish/bio-did-seq/internal/user/usecase"
)

// RunCreateUser registers a researcher account from the command line.
func RunCreateUser(ctx context.Context, username, email, password string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	useCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	user, err := useCase.RegisterUser(ctx, userUsecase.RegisterUserInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	logger.Info("user created",
		slog.String("id", user.ID.String()),
		slog.String("username", user.Username),
	)
	fmt.Printf("id: %s\n", user.ID)
	fmt.Printf("username: %s\n", user.Username)
	return nil
}
