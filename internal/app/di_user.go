package app

import (
	"fmt"

	userRepository "github.com/publiish/bio-did-seq/internal/user/repository"
	userUsecase "github.com/publiish/bio-did-seq/internal/user/usecase"
)

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	c.domainInit.userRepoOnce.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.domainInit.userRepo = userRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.domainInit.userRepo = userRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["userRepo"]; exists {
		return nil, err
	}
	return c.domainInit.userRepo, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUsecase.UseCase, error) {
	c.domainInit.userUseCaseOnce.Do(func() {
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get user repository for user use case: %w", err)
			return
		}

		useCase, err := userUsecase.NewUserUseCase(userRepo)
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to create user use case: %w", err)
			return
		}
		c.domainInit.userUseCase = useCase
	})
	if err, exists := c.initErrors["userUseCase"]; exists {
		return nil, err
	}
	return c.domainInit.userUseCase, nil
}
