// Complete function implementations for x64 assembly generation
package io

import (
	"strings"
)

// GenerateCompleteFileCloseFunction generates a complete file close function with prologue and epilogue
func (x64 *X64IOIntegration) GenerateCompleteFileCloseFunction() string {
	var asm strings.Builder

	// Function label
	asm.WriteString("orizon_io_file_close:\n")

	// Function prologue
	asm.WriteString("    push rbp\n")
	asm.WriteString("    mov rbp, rsp\n")
	asm.WriteString("    sub rsp, 32        ; Reserve shadow space\n")

	// Function body - file close logic
	asm.WriteString("    ; File close implementation\n")
	asm.WriteString("    mov rcx, [rbp+16]  ; hObject (file handle parameter)\n")
	asm.WriteString("    call CloseHandle   ; Windows API call\n")

	// Function epilogue
	asm.WriteString("    add rsp, 32        ; Restore stack\n")
	asm.WriteString("    pop rbp\n")
	asm.WriteString("    ret\n")

	return asm.String()
}

// GenerateCompleteThreadCreateFunction generates a complete thread create function
func (x64 *X64IOIntegration) GenerateCompleteThreadCreateFunction() string {
	var asm strings.Builder

	// Function label
	asm.WriteString("orizon_io_thread_create:\n")

	// Function prologue
	asm.WriteString("    push rbp\n")
	asm.WriteString("    mov rbp, rsp\n")
	asm.WriteString("    sub rsp, 48        ; Reserve space for parameters and locals\n")

	// Function body
	asm.WriteString("    ; Thread creation implementation\n")
	asm.WriteString("    mov rcx, 0         ; lpThreadAttributes (NULL)\n")
	asm.WriteString("    mov rdx, 0         ; dwStackSize (default)\n")
	asm.WriteString("    mov r8, [rbp+16]   ; lpStartAddress (function parameter)\n")
	asm.WriteString("    mov r9, [rbp+24]   ; lpParameter (data parameter)\n")
	asm.WriteString("    push 0             ; dwCreationFlags\n")
	asm.WriteString("    lea rax, [rbp-8]   ; lpThreadId (local variable)\n")
	asm.WriteString("    push rax           ; Push thread ID pointer\n")
	asm.WriteString("    call CreateThread  ; Windows API call\n")
	asm.WriteString("    add rsp, 16        ; Clean up pushed parameters\n")

	// Function epilogue
	asm.WriteString("    add rsp, 48        ; Restore stack\n")
	asm.WriteString("    pop rbp\n")
	asm.WriteString("    ret\n")

	return asm.String()
}

// GenerateCompleteMutexLockFunction generates a complete mutex lock function
func (x64 *X64IOIntegration) GenerateCompleteMutexLockFunction() string {
	var asm strings.Builder

	// Function label
	asm.WriteString("orizon_io_mutex_lock:\n")

	// Function prologue
	asm.WriteString("    push rbp\n")
	asm.WriteString("    mov rbp, rsp\n")
	asm.WriteString("    sub rsp, 32        ; Reserve shadow space\n")

	// Function body
	asm.WriteString("    ; Mutex lock implementation\n")
	asm.WriteString("    mov rcx, [rbp+16]  ; hHandle (mutex handle parameter)\n")
	asm.WriteString("    mov rdx, 0xFFFFFFFF ; dwMilliseconds (INFINITE)\n")
	asm.WriteString("    call WaitForSingleObject ; Windows API call\n")

	// Function epilogue
	asm.WriteString("    add rsp, 32        ; Restore stack\n")
	asm.WriteString("    pop rbp\n")
	asm.WriteString("    ret\n")

	return asm.String()
}
