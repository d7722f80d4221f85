// Package report renders command outcomes as a JSON envelope:
//
//	{"status":"success","data":[42]}
//	{"status":"panic","message":"Panicked with 0x1.","data":["0x1"]}
//	{"status":"error","message":"[load] invalid_data: compile module ..."}
package report
