package repository

import "errors"

var ErrNotFound = errors.New("documento no encontrado")
