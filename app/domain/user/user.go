package user

import (
	"context"

	"menlo.ai/catalog-admin/app/utils/httpclients/dummyjson"
)

const (
	ResourceKind    = "users"
	FallbackMessage = "Failed to load users"
)

type Company struct {
	Name  string
	Title string
}

type Address struct {
	Address string
	City    string
	State   string
}

type User struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Gender    string
	Phone     string
	Image     string
	Company   Company
	Address   Address
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type UserClient interface {
	ListUsers(ctx context.Context, limit, skip int) (*dummyjson.UserList, error)
	SearchUsers(ctx context.Context, q string, limit, skip int) (*dummyjson.UserList, error)
	GetUser(ctx context.Context, id int) (*dummyjson.User, error)
}

func fromRemote(u dummyjson.User) User {
	return User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Gender:    u.Gender,
		Phone:     u.Phone,
		Image:     u.Image,
		Company:   Company{Name: u.Company.Name, Title: u.Company.Title},
		Address:   Address{Address: u.Address.Address, City: u.Address.City, State: u.Address.State},
	}
}
