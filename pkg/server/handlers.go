package server

import (
	"Fundoo/handler"
)

type Handlers struct {
	Note  *handler.Note
	Label *handler.Label
}
