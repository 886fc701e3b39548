package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
)

func currentMemberID(c *gin.Context) (uint, error) {
	v, ok := c.Get("member_id")
	if !ok {
		return 0, errors.New("member_id tidak ada di context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("member_id tidak valid")
	}
	return id, nil
}
